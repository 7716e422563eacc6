package main

import "github.com/akashicode/pdfclean/cmd"

func main() {
	cmd.Execute()
}
