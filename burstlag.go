// Package burstlag holds the version shared by the burstlag commands.
package burstlag

// Version of the burstlag tools.
const Version = "0.1.0"
