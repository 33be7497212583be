// Package bee implements the Bee side of the colony debate protocol: a
// participant that answers round prompts through the narrow model
// completion capability and reports a structured response with position,
// confidence and key points. A Colony groups in-process participants
// behind the debate Transport interface, which is enough to run a whole
// debate inside one binary or one test.
package bee
