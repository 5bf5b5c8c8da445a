// Command docctl exposes the document tools on the command line: amount in
// words, GST computation, record normalization and inventory sheet import.
package main

func main() {
	Execute()
}
