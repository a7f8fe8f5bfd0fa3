// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff_test

import (
	"fmt"

	"github.com/jeranaias/toolbench/internal/diff"
)

func ExampleComputeLineDiff() {
	oldContent := "package main\n\nfunc main() {\n\tfmt.Println(\"Hello\")\n}\n"
	newContent := "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"Hello, World!\")\n}\n"

	changes := diff.ComputeLineDiff(oldContent, newContent)

	fmt.Println(diff.Summary(diff.ComputeStats(changes, diff.ModeLines)))

	// Output:
	// +3 -1
}

func ExampleUnified() {
	changes := diff.ComputeLineDiff("line1\nline2\nline3", "line1\nmodified\nline3")

	fmt.Print(diff.Unified("a/file.txt", "b/file.txt", changes))

	// Output:
	// --- a/file.txt
	// +++ b/file.txt
	// @@ -1,3 +1,3 @@
	//  line1
	// -line2
	// +modified
	//  line3
	// \ No newline at end of file
}

func ExampleComputeWordDiff() {
	for _, c := range diff.ComputeWordDiff("the quick fox", "the slow fox") {
		switch {
		case c.Added:
			fmt.Printf("+%q\n", c.Value)
		case c.Removed:
			fmt.Printf("-%q\n", c.Value)
		default:
			fmt.Printf(" %q\n", c.Value)
		}
	}

	// Output:
	//  "the "
	// -"quick"
	// +"slow"
	//  " fox"
}

func ExampleDiffLineType_Prefix() {
	fmt.Println("Added:", diff.DiffLineAdded.Prefix())
	fmt.Println("Removed:", diff.DiffLineRemoved.Prefix())

	// Output:
	// Added: +
	// Removed: -
}
