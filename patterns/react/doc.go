// Package react drives the research loop: the model reasons over the
// conversation, requests tools, reads their results and eventually answers.
//
// Each turn moves through the states
//
//	AwaitingUserInput -> Reasoning -> (ToolCallPending -> ToolExecuting -> ToolResultReceived)* -> Responding -> AwaitingUserInput
//
// Tool calls of one batch run concurrently, and their results are appended
// to the history in the order the model asked for them. A tool that fails
// becomes an error result the model can read. A tool the catalog does not
// know aborts the turn with [ErrToolNotFound]. When the iteration limit is
// reached the model is asked once more, without tools, to answer from what
// it has.
package react
