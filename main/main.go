package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

func fatal(code int, v ...interface{}) int {
	fmt.Fprintln(os.Stderr, v...)
	return code
}
