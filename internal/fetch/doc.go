// Package fetch downloads remote images with the limits the comparison
// service enforces: absolute http/https URLs only, an allow-list of image
// content types, and a byte cap checked against the announced length and
// again while the body streams. Violations surface as sentinel errors so
// the serving layer can map them to client-error responses.
package fetch
