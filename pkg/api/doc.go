// Package api holds the request and response messages of the creaturemap.v1
// services. Messages are plain structs carried as JSON over Connect; see
// Codec and the apiconnect package.
package api
