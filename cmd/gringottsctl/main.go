// Command gringottsctl is a thin external front end over the gringottsdb
// library: it parses arguments, reads stdin where the library needs a
// value, and calls the library's {create, open, get, set, info} surface.
package main

func main() {
	execute()
}
