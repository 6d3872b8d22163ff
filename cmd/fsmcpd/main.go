// Command fsmcpd runs the complement-mcp filesystem access server.
package main

func main() {
	Execute()
}
