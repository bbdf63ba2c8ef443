// Package page provides an HTML document implementation of roster.Page.
//
// Documents are parsed with goquery and mutated in place: the event selector
// and name input are located by id, participants are appended as <li> text
// nodes to the element whose id is "<event>-list", and the result can be
// rendered back to HTML. Template produces the default sign-up page.
package page
