// Package flow runs a chain of steps connected by channels.
//
// A flow starts with a root step that produces elements, continues with any number of
// one-to-one steps, and ends with a sink. Each step runs in its own goroutine; a step
// created with StepConcurrency spreads its input over several workers. Every step reports
// errors on its own channel, and Run stops on the first reported error by cancelling the
// context shared by all the steps.
//
// Options implementing model.FlowOption observe the flow, for instance to measure how long
// each step spends computing and waiting.
package flow
