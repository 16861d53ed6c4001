// Package model provides the data structures shared by the flow package and its options:
// the description of a step, the typed step handle passed between steps, and the hooks
// an option receives while a flow runs.
package model
