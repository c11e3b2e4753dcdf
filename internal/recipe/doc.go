// Package recipe turns a list of pantry ingredients into a batch of three
// recipes using a text model, validating what the model returns and retrying
// or falling back to built-in recipes when the output is unusable.
//
// A batch is ordered by how much shopping it needs. The first recipe uses only
// what is on hand, the second needs one or two extra ingredients and the third,
// the chef's pick, may need up to five and is the only one that gets a
// generated photo.
package recipe
