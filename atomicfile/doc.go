/*
Package atomicfile writes files so that readers never see a partially
written file.

Data goes to a temporary file in the destination directory. Only after
Write, Sync and Close all succeed is the temporary file renamed over the
destination. On any error the temporary file is removed and the
destination keeps its previous content.

	func saveLines(path string, lines []string) error {
		w, err := atomicfile.New(path)
		if err != nil {
			return err
		}
		// a no-op after Close()
		defer w.RemoveIfNotClosed()

		for _, l := range lines {
			if _, err = w.Write([]byte(l + "\n")); err != nil {
				return err
			}
		}
		return w.Close()
	}

For a single buffer use WriteFile.
*/
package atomicfile
