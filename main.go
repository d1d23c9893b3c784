package main

import "github.com/vibast-solutions/ms-go-payment-notifier/cmd"

func main() {
	cmd.Execute()
}
