// Package prometheus exports rexfs metrics through client_golang.
package prometheus
