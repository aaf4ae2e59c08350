package curriculum

import (
	"fmt"
	"strings"
)

// Fixed curricula. Topic order is the canonical progression; the topic
// index is built from these at first load of a subject.

var pythonTopics = []string{
	"What is Python & Why Learn It?",
	"Setting Up Your Python Environment",
	"Choosing and Setting Up an IDE/Editor",
	"Your First Python Code: \"Hello, World!\"",
	"Understanding Python Syntax and Indentation",
	"Writing Comments in Python",
	"Introduction to Variables",
	"Introduction to Data Types",
	"Numerical Type: Integers (int)",
	"Numerical Type: Floating-Point Numbers (float)",
	"Basic Arithmetic Operators",
	"String (str): Fundamentals",
	"String Concatenation and Repetition",
	"Getting User Input with input()",
	"Type Conversion (Casting)",
	"String Formatting: f-Strings",
	"Boolean Type (bool)",
	"Comparison Operators",
	"The None Type",
	"Logical Operators (and, or, not)",
	"Conditional Statements: if",
	"Conditional Statements: else",
	"Conditional Statements: elif",
	"Introduction to Loops: Why Repeat?",
	"while Loops",
	"for Loops and Iterables",
	"The range() Function",
	"Loop Control: break Statement",
	"Loop Control: continue Statement",
	"Loop else Clause",
	"Introduction to Data Structures",
	"Lists (list): Fundamentals",
	"List Indexing and Slicing",
	"Modifying Lists: Mutability",
	"Common List Methods",
	"Looping Through Lists",
	"Introduction to List Comprehensions",
	"Tuples (tuple): Fundamentals",
	"Tuple Use Cases and Unpacking",
	"Dictionaries (dict): Fundamentals",
	"Accessing and Modifying Dictionary Items",
	"Common Dictionary Methods",
	"Looping Through Dictionaries",
	"Introduction to Dictionary Comprehensions",
	"Sets (set): Fundamentals",
	"Set Operations",
	"Introduction to Functions: DRY Principle",
	"Defining Functions with def",
	"Function Arguments (Parameters)",
	"Return Values with return",
	"Positional and Keyword Arguments",
	"Default Argument Values",
	"Variable Scope: Local vs. Global",
	"Docstrings: Documenting Functions",
	"Anonymous Functions: lambda",
	"Introduction to Modules",
	"Importing Modules: import and from...import",
	"Exploring the Python Standard Library (Examples: math, random)",
	"Creating Your Own Modules",
	"Introduction to Packages",
	"Introduction to Errors and Exceptions",
	"Handling Exceptions: try...except Blocks",
	"Handling Specific vs. General Exceptions",
	"The else and finally Clauses in try Blocks",
	"Raising Exceptions with raise",
	"Introduction to File Handling",
	"Reading from Files ('r' mode)",
	"Writing to Files ('w', 'a' modes)",
	"Context Managers: with open(...)",
	"Working with File Paths (os and pathlib)",
	"Introduction to OOP Concepts",
	"Defining Classes with class",
	"Creating Objects (Instances)",
	"Instance Attributes and the __init__ Method",
	"Instance Methods",
	"Understanding self",
	"Class Attributes",
	"Encapsulation: Public, Protected, and Private",
	"Introduction to Inheritance",
	"Creating Subclasses",
	"Overriding Methods and the super() Function",
	"Introduction to Polymorphism",
	"Special Methods (Dunder Methods)",
	"More List Comprehensions (with if)",
	"Set and Dictionary Comprehensions Revisited",
	"Generators: Introduction and yield",
	"Generator Expressions",
	"Decorators: Introduction",
	"Creating and Using Simple Decorators",
	"Working with *args and **kwargs",
	"Regular Expressions (re module): Basics",
	"Working with Dates and Times (datetime module)",
	"Working with JSON Data (json module)",
	"Introduction to Virtual Environments (venv)",
	"Managing Packages with pip",
	"Writing Clean Code: PEP 8 Style Guide",
	"Debugging Techniques",
	"Introduction to Testing: Why Test?",
	"Basic Unit Testing (unittest or pytest)",
	"Version Control with Git: Basics",
	"Where to Go Next? Specializations",
}

var webDevTopics = []string{
	"What is Web Development?",
	"How Websites Work (Client, Server, HTTP)",
	"Core Technologies Overview (HTML, CSS, JS Roles)",
	"Setting Up Your Development Environment (Browser, Code Editor)",
	"Using Browser Developer Tools (Inspector, Console Basics)",
	"What is HTML?",
	"Basic HTML Document Structure (<!DOCTYPE>, <html>, <head>, <body>)",
	"Headings (<h1> to <h6>)",
	"Paragraphs (<p>)",
	"Line Breaks (<br>) and Horizontal Rules (<hr>)",
	"Text Formatting: Bold (<strong>) and Italic (<em>)",
	"Comments in HTML (<!-- -->)",
	"Introduction to Attributes (e.g., id, class)",
	"Unordered Lists (<ul>, <li>)",
	"Ordered Lists (<ol>, <li>)",
	"Creating Links (<a> tag, href attribute)",
	"Absolute vs. Relative URLs",
	"Linking Within a Page (Fragment Identifiers #)",
	"Adding Images (<img> tag, src, alt attributes)",
	"Understanding File Paths for Links and Images",
	"Basic Table Structure (<table>, <tr>, <th>, <td>)",
	"Table Headers and Body (<thead>, <tbody>)",
	"Introduction to HTML Forms (<form> tag)",
	"Text Input Fields (<input type=\"text\">, <input type=\"password\">)",
	"Labels for Inputs (<label>)",
	"Radio Buttons (<input type=\"radio\">)",
	"Checkboxes (<input type=\"checkbox\">)",
	"Submit Buttons (<input type=\"submit\">, <button type=\"submit\">)",
	"Text Areas (<textarea>)",
	"Dropdown Select Boxes (<select>, <option>)",
	"Introduction to Semantic HTML",
	"Structural Elements (<header>, <footer>, <nav>, <main>)",
	"Content Sectioning Elements (<article>, <section>, <aside>)",
	"Inline vs. Block Level Elements",
	"Grouping Content (<div>, <span>)",
	"HTML Entities (e.g., &copy;, &lt;, &gt;)",
	"Embedding Audio (<audio>)",
	"Embedding Video (<video>)",
	"Basic Web Accessibility Concepts (alt text review, semantic meaning)",
	"What is CSS?",
	"Ways to Add CSS (Inline, Internal <style>, External <link>)",
	"Basic CSS Syntax (Selector { Property: Value; })",
	"Element Selectors (e.g., p, h1, div)",
	"Class Selectors (.classname)",
	"ID Selectors (#idname)",
	"Grouping Selectors (,)",
	"Descendant Combinator (space)",
	"Child Combinator (>)",
	"Adjacent Sibling Combinator (+)",
	"General Sibling Combinator (~)",
	"Comments in CSS (/* */)",
	"Styling Text: color Property",
	"Styling Text: font-family Property",
	"Styling Text: font-size Property",
	"Styling Text: font-weight Property",
	"Styling Text: text-align Property",
	"Styling Text: text-decoration Property",
	"Backgrounds: background-color Property",
	"Backgrounds: background-image Property",
	"Introduction to the Box Model (Content, Padding, Border, Margin)",
	"Setting width and height",
	"Padding Properties (padding, -top, -right, -bottom, -left)",
	"Border Properties (border, -width, -style, -color)",
	"Margin Properties (margin, -top, -right, -bottom, -left)",
	"box-sizing: border-box",
	"Understanding CSS Specificity",
	"Inheritance in CSS",
	"Pseudo-classes (:hover, :focus, :active)",
	"Structural Pseudo-classes (:first-child, :last-child, :nth-child())",
	"Pseudo-elements (::before, ::after)",
	"Attribute Selectors ([attribute], [attribute=value])",
	"The display Property (block, inline, inline-block, none)",
	"The visibility Property",
	"CSS Positioning: static (Default)",
	"CSS Positioning: relative",
	"CSS Positioning: absolute",
	"CSS Positioning: fixed",
	"CSS Positioning: sticky",
	"The z-index Property",
	"Floating Elements (float: left/right) (Legacy Concept)",
	"Clearing Floats (clear: both) (Legacy Concept)",
	"Introduction to Flexbox Layout (display: flex)",
	"Flex Container Properties: flex-direction",
	"Flex Container Properties: justify-content",
	"Flex Container Properties: align-items",
	"Flex Container Properties: flex-wrap",
	"Flex Item Properties: flex-grow, flex-shrink, flex-basis",
	"Flex Item Properties: order",
	"Flex Item Properties: align-self",
	"Introduction to Grid Layout (display: grid)",
	"Defining Grid Columns (grid-template-columns)",
	"Defining Grid Rows (grid-template-rows)",
	"Creating Gutters (gap, column-gap, row-gap)",
	"Placing Items in Grid (grid-column, grid-row)",
	"Spanning Grid Items",
	"Introduction to Responsive Web Design",
	"The Viewport Meta Tag (<meta name=\"viewport\">)",
	"Using Media Queries (@media)",
	"Common Breakpoints",
	"Mobile-First Design Approach",
	"Relative Units: Percentages (%)",
	"Relative Units: em and rem",
	"Viewport Units: vw and vh",
	"Responsive Images (e.g., max-width: 100%)",
	"CSS Transitions (transition property)",
	"CSS Animations (@keyframes, animation property)",
	"CSS Variables (Custom Properties) (--var, var())",
	"Introduction to CSS Preprocessors (Concept - Sass/LESS)",
	"Introduction to CSS Frameworks (Concept - Bootstrap/Tailwind)",
	"What is JavaScript?",
	"Adding JavaScript to HTML (<script> tag - internal vs external)",
	"The Browser Console (console.log())",
	"Comments in JavaScript (//, /* */)",
	"Introduction to Variables (var - historical, let, const)",
	"JavaScript Data Types: Overview",
	"Data Type: Numbers",
	"Data Type: Strings (Concatenation, Properties, Methods)",
	"Data Type: Booleans",
	"Data Type: Null and Undefined",
	"Basic Operators: Arithmetic (+, -, *, /, %, **)",
	"Basic Operators: Assignment (=, +=, -=, etc.)",
	"Basic Operators: Comparison (==, ===, !=, !==, >, <, >=, <=)",
	"Basic Operators: Logical (&&, ||, !)",
	"Type Coercion Basics",
	"Conditional Statements: if, else if, else",
	"Conditional Statements: switch",
	"Ternary Operator (condition ? exprIfTrue : exprIfFalse)",
	"Introduction to Functions (Declaration)",
	"Function Parameters and Arguments",
	"Function Return Values (return)",
	"Function Expressions",
	"Variable Scope (Global, Function, Block)",
	"Introduction to Arrays",
	"Accessing Array Elements (Indexing)",
	"Common Array Methods (push, pop, shift, unshift)",
	"Common Array Methods (slice, splice)",
	"Introduction to Objects (Literals)",
	"Accessing Object Properties (Dot Notation, Bracket Notation)",
	"Modifying Object Properties",
	"for Loops",
	"while Loops",
	"Looping Through Arrays (for loop, forEach)",
	"What is the DOM?",
	"Selecting Elements: getElementById()",
	"Selecting Elements: getElementsByClassName()",
	"Selecting Elements: getElementsByTagName()",
	"Selecting Elements: querySelector() (Single Element)",
	"Selecting Elements: querySelectorAll() (NodeList)",
	"Traversing the DOM: Parent (parentElement)",
	"Traversing the DOM: Children (children)",
	"Traversing the DOM: Siblings (nextElementSibling, previousElementSibling)",
	"Modifying Element Content: textContent",
	"Modifying Element Content: innerHTML (Use with Caution)",
	"Modifying Element Attributes: getAttribute(), setAttribute()",
	"Modifying Element Styles (element.style property)",
	"Modifying CSS Classes (element.classList.add(), .remove(), .toggle())",
	"Creating New Elements (createElement())",
	"Adding Elements to the DOM (appendChild(), insertBefore())",
	"Removing Elements from the DOM (removeChild())",
	"Introduction to Browser Events",
	"Adding Event Listeners (addEventListener())",
	"Common Event Types: click, mouseover, mouseout",
	"Common Event Types: keydown, keyup",
	"Common Event Types: submit (Form Events)",
	"Common Event Types: load, DOMContentLoaded",
	"The Event Object",
	"Preventing Default Behavior (event.preventDefault())",
	"Event Bubbling and Capturing (Concept)",
	"Understanding this Keyword (Basic Global/Function Context)",
	"Arrow Functions (=>)",
	"Template Literals (Backticks ``)",
	"Array Helper Methods: map()",
	"Array Helper Methods: filter()",
	"Array Helper Methods: reduce() (Optional/Advanced)",
	"Destructuring Assignment (Arrays and Objects)",
	"Spread (...) and Rest (...) Operators",
	"Introduction to Asynchronous JavaScript",
	"Callbacks (Concept and Basic Usage)",
	"Introduction to Promises (.then(), .catch())",
	"Using async and await",
	"Making HTTP Requests with fetch() API",
	"Working with JSON Data (JSON.parse(), JSON.stringify())",
	"Handling fetch Errors",
	"Browser Storage: localStorage",
	"Browser Storage: sessionStorage",
	"JavaScript Modules (import/export) (Concept)",
	"Further Browser Developer Tools Usage (Debugging JS)",
	"Introduction to Version Control with Git (init, add, commit, status)",
	"Working with Remote Repositories (GitHub/GitLab Basics: clone, push, pull)",
	"Code Quality and Linting (Concept - e.g., ESLint, Prettier)",
	"Web Accessibility (A11y) Best Practices Review",
	"Basic Web Performance Considerations (Image Optimization, Minification Concept)",
	"Introduction to Frontend Frameworks/Libraries (React, Vue, Angular - Overview)",
	"Introduction to Backend Development (Node.js, Python/Django/Flask - Overview)",
	"Where to Go Next? Specializations",
}

var programmingSubjects = map[string]bool{
	"python":          true,
	"web_development": true,
	"data_science":    true,
	"javascript":      true,
	"java":            true,
	"c++":             true,
}

// Normalize folds a URL slug into the canonical subject key.
func Normalize(subject string) string {
	return strings.ReplaceAll(strings.ToLower(subject), "-", "_")
}

// IsProgramming reports whether quizzes for the subject should include
// code and syntax questions.
func IsProgramming(subject string) bool {
	return programmingSubjects[Normalize(subject)]
}

// Topics returns the predefined curriculum for a subject, or nil when
// the subject has none.
func Topics(subject string) []string {
	switch Normalize(subject) {
	case "python":
		return pythonTopics
	case "web_development":
		return webDevTopics
	}
	return nil
}

// TopicAt returns the curriculum topic at an index.
func TopicAt(subject string, index int) (string, bool) {
	topics := Topics(subject)
	if index < 0 || index >= len(topics) {
		return "", false
	}
	return topics[index], true
}

// FirstTopic is what gets generated on first entry to a subject.
func FirstTopic(subject string) string {
	if topics := Topics(subject); len(topics) > 0 {
		return topics[0]
	}
	return fmt.Sprintf("Introduction to %s", subject)
}

// NextTopicTitle computes the title to generate after currentIndex. Past
// the end of the curriculum it falls back to a generic placeholder.
func NextTopicTitle(subject string, currentIndex int) string {
	if title, ok := TopicAt(subject, currentIndex+1); ok {
		return title
	}
	return fmt.Sprintf("Next topic in %s", subject)
}
