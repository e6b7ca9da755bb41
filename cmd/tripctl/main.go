// Command tripctl is the operator CLI for the trip planner: it migrates the
// session database, browses the activity catalog and dry-runs trip plans.
package main

func main() {
	Execute()
}
