// Package llm talks to the hosted models the kitchen depends on: OpenAI chat
// completions for recipe text, OpenAI image generation for recipe photos and
// Gemini for spotting groceries in a photo.
//
// Provider failures are reported as *APIError values whose Kind says whether
// the caller ran out of quota, used a bad key, was throttled, lost the network
// or asked for a model that does not exist.
package llm
