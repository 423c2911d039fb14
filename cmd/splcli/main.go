// Command splcli analyzes Splunk Processing Language queries, producing a
// field-lineage index and a risky-command report without executing any
// part of the query.
package main

import (
	"splqlineage/pkg/lib"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		lib.Exit(err)
	}
}
