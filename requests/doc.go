// Package requests decodes the JSON request documents of both operating
// modes, validates them, fills a catalogue from base requests and answers
// stat requests.
package requests
