// Package keepfile writes keep names in the configuration format read by ProGuard-compatible
// shrinking tools.
package keepfile

import (
	"bufio"
	"io"
	"os"
	"runtime"

	"github.com/alecthomas/errors"
)

// DefaultFilename of the generated configuration, relative to the working directory.
const DefaultFilename = "dagger-proguard-keepnames.cfg"

// Header is the first line of every generated file. The wording matches files generated by
// dagger-proguard-helper so regenerating them leaves the header unchanged.
const Header = "# do not modify that file, it's rewriting each build by dagger-proguard-helper and your changes will be removed"

// Directive prefixes every keep name.
const Directive = "-keepnames class "

// Newline is the line terminator of the host operating system.
var Newline = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// Encode writes the header followed by one keep directive per name, in order.
func Encode(w io.Writer, names []string) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + Newline); err != nil {
		return errors.Errorf("failed to write header: %w", err)
	}
	for _, name := range names {
		if _, err := bw.WriteString(Directive + name + Newline); err != nil {
			return errors.Errorf("failed to write keep directive for %s: %w", name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Errorf("failed to flush keep directives: %w", err)
	}
	return nil
}

// Write the keep names to path, returning true if the file was written.
//
// If names is empty and a file already exists at path, the file is left untouched so that a scan
// which found nothing does not clobber a previous result. Otherwise any existing file is replaced.
func Write(path string, names []string) (written bool, err error) {
	if len(names) == 0 {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return false, errors.Errorf("failed to stat %s: %w", path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return false, errors.Errorf("failed to create %s: %w", path, err)
	}
	// Close errors after a successful flush are ignored, the content is already complete.
	defer f.Close() //nolint:errcheck
	if err := Encode(f, names); err != nil {
		return false, errors.Errorf("%s: %w", path, err)
	}
	return true, nil
}
