package display

import "fmt"

// NextSteps returns the manual follow-up checklist printed after a batch.
// Steps are unnumbered; callers add numbering.
func NextSteps(inputDir, outputDir string) []string {
	return []string{
		fmt.Sprintf("Move the MP4 files from '%s' to replace the MKV files in '%s'", outputDir, inputDir),
		"Update any references (e.g. files.json) from .mkv to .mp4",
		"Delete the old MKV files once the MP4 versions are verified",
	}
}
