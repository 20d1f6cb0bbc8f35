package main

import "task-tracker.com/task-tracker/cmd"

func main() {
	cmd.Execute()
}
