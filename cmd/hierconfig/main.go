// Command hierconfig drives the hierconfig library from the shell:
// computing remediation configs, applying tag rules, and running the
// OS-specific fixup framework.
package main

import "github.com/netdevops/hierconfig/internal/cli"

func main() {
	cli.Execute()
}
