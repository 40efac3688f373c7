// Package main provides the git-secret reveal action entry point.
package main

func main() {
	Execute()
}
