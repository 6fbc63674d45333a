// Package workflow loads declarative path manipulation plans and applies their
// steps to batches of paths.
package workflow
