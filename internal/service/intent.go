package service

import "regexp"

// Modification intent tags.
const (
	IntentSimplify      = "simplify"
	IntentAdvanced      = "advanced"
	IntentMoreExamples  = "more-examples"
	IntentExplain       = "explain"
	IntentChildExplain  = "child-explain"
	IntentGenericModify = "generic-modify"
)

// intentRule binds one pattern to one intent tag. The table is
// intentionally permissive: a false positive only routes the user to a
// confirmation step, never straight to regeneration.
type intentRule struct {
	tag     string
	pattern *regexp.Regexp
}

var intentRules = []intentRule{
	{IntentChildExplain, regexp.MustCompile(`(?i)explain (?:like|as if) (?:i'?m|i am) (?:a )?\d+`)},
	{IntentSimplify, regexp.MustCompile(`(?i)simpl(e|ify|er)|easier|basic`)},
	{IntentAdvanced, regexp.MustCompile(`(?i)advanc(e|ed)|complex|more detailed|in-?depth`)},
	{IntentMoreExamples, regexp.MustCompile(`(?i)more examples|example`)},
	{IntentExplain, regexp.MustCompile(`(?i)explain|clarify|elaborate`)},
	{IntentGenericModify, regexp.MustCompile(`(?i)(?:change|translate|convert|make|modify|simplify|explain|add more|give more|in|to) (?:language|content|examples|simple|simpler|easier|hindi|arabic|detailed|detail|explanation)`)},
}

// DetectIntents returns every intent tag whose pattern matches, in rule
// order.
func DetectIntents(message string) []string {
	var tags []string
	for _, rule := range intentRules {
		if rule.pattern.MatchString(message) {
			tags = append(tags, rule.tag)
		}
	}
	return tags
}

// IsModificationRequest reports whether the message looks like a request
// to modify the lesson content. Only the two broad rules decide this;
// the narrower tags merely shape the regeneration prompt. Detection
// alone never triggers regeneration; the caller must obtain explicit
// confirmation first.
func IsModificationRequest(message string) bool {
	tags := DetectIntents(message)
	return hasIntent(tags, IntentGenericModify) || hasIntent(tags, IntentChildExplain)
}

func hasIntent(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
