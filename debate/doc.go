// Package debate implements the multi-round Bee Colony debate protocol on
// top of A2A messaging:
//
//	Round 1: Queen sends the topic (plus knowledge context) to all Bees
//	         for independent research.
//	Round 2+: Queen shares every Bee's previous output; each Bee critiques,
//	         synthesizes and may revise its position and confidence.
//	Each round: confidence-weighted consensus analysis decides whether the
//	         debate concludes, continues, or exhausts its round budget.
//
// The Session owns one debate's configuration, round history and state and
// is single-writer: exactly one orchestrating goroutine mutates it. Peer
// fan-out is delegated to a Transport capability so the engine itself stays
// free of network concerns.
package debate
