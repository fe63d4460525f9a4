// Command bharatgpt explains Indian government schemes from the terminal
// or a browser.
package main

import "github.com/diogo/bharatgpt/internal/commands"

func main() {
	commands.Execute()
}
