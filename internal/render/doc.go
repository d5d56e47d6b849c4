// Package render writes human-readable views of navigation trees and the
// content set.
package render
