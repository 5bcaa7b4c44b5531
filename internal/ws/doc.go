// Package ws exposes the lifecycle notification stream over WebSocket.
//
// Clients connect to /stream and receive every hub message: user-facing
// notifications (errors, rejections) and property-change signals such as
// "recently played list changed". The stream is read-mostly; the only
// inbound message honored is a ping.
package ws
