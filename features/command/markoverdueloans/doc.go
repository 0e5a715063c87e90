// Package markoverdueloans implements the overdue sweep.
//
// This feature relabels Active loans past their due date as Overdue so
// reports can surface lateness before the return; fines are assessed at
// return time, never here. Each loan is processed under its own conflict
// retry.
package markoverdueloans
