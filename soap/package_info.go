// Package soap contains the SOAP messaging stack used by both sides of the contract tests:
// envelopes and messages, a forward-only reader over message bodies, message contracts,
// operation formatting, faults, bindings, the client channel factory and the server-side
// dispatcher.
//
// XML is built and parsed with github.com/beevik/etree. Two message versions are supported:
// SOAP 1.1 without addressing headers (what a basic HTTP binding uses), and SOAP 1.2 with
// WS-Addressing 1.0.
package soap
