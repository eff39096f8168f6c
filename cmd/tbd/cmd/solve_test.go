package cmd

import (
	"os"
	"strings"
	"testing"
)

func writeTBD(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(".", "system*.tbd")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

func TestRunSolvePrintsResolvedQuantities(t *testing.T) {
	path := writeTBD(t, "define a = 3;\ndefine b = 4;\nc == a + b;\n")

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := runSolve(rootCmd, path)

	w.Close()
	os.Stdout = oldStdout

	var buf [4096]byte
	n, _ := r.Read(buf[:])
	output := string(buf[:n])

	if err != nil {
		t.Fatalf("runSolve: %v", err)
	}
	if !strings.Contains(output, "c = 7") {
		t.Errorf("missing 'c = 7' in output:\n%s", output)
	}
}

func TestValidateFilePathRejectsTraversalAndWrongExtension(t *testing.T) {
	good := writeTBD(t, "define a = 1;\n")

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid file", good, false},
		{"path traversal", "../../../etc/passwd", true},
		{"wrong extension", good[:len(good)-4] + ".txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFilePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
