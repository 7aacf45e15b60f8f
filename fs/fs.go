// Package fs loads batch prompts from files on disk.
//
// Files are matched with doublestar patterns relative to a root directory,
// so ** matches across directories. A file may hold several prompts
// separated by lines containing only "---".
package fs

// Separator splits prompts within one file.
const Separator = "---"

// maxPromptFileSize bounds how much of a single prompt file is read.
const maxPromptFileSize = 256 * 1024
