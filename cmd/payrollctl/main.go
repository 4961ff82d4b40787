package main

import "github.com/cmlabs-hris/payroll-attendance-go/cmd/payrollctl/cmd"

func main() {
	cmd.Execute()
}
