// Command mstat indexes reference files into a generalized suffix tree and
// prints the matching statistics of query files against it.
//
//	mstat match --ref genome.txt --query read1.txt --query read2.txt
//	mstat stats --ref a.txt --ref b.txt --unit byte
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
