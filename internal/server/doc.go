// Package server provides the browser UI and the JSON API of sentiment.
//
// The UI is a single form: the user picks one of the models, enters text
// and gets the predicted label with a bar chart and a button that downloads
// the PDF report. Every request carries everything it needs; the server
// keeps no session state and writes nothing to disk.
package server
