// Package footprint estimates the energy and carbon cost of generative AI
// content requests (chatbot, completion, translation) from usage counts.
//
// The engine is a pure function of its inputs: a fixed cost model
// (Constants), simulated text sizes (Params) and a usage record. Identical
// inputs always produce bit-identical results, so an Engine can be shared
// across goroutines and tests freely.
//
// Two cost models exist:
//
//   - Translation is character based: chars * nmt_energy_per_char.
//   - Chatbot and Completion are token + latency based: a dynamic term
//     proportional to tokens plus a static term of count*latency*static_power.
//
// Both are multiplied by PUE and converted to carbon with the grid intensity.
// Records whose label matches no category are Unknown; see UnknownPolicy.
package footprint
