// Package session keeps the state of an interactive LPP session.
//
// The parse service is stateless: every request is evaluated in a fresh
// environment. A Session therefore remembers the lines entered so far and
// resubmits all of them, joined by a space, each time a new line is
// evaluated. Lines that fail are forgotten so they do not poison later
// evaluations, and print statements are forgotten once they ran so their
// output is not repeated.
//
//	s := session.New(client.New())
//	res, err := s.Eval(ctx, "sea x = 5;")
package session
