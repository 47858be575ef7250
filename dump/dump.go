// This file is part of Samclk.
//
// Samclk is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Samclk is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Samclk.  If not, see <https://www.gnu.org/licenses/>.

package dump

import (
	"bytes"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/samclk/curated"
	"github.com/jetsetilly/samclk/hardware/clocktree"
	"github.com/jetsetilly/samclk/logger"
	"github.com/jetsetilly/samclk/paths"
)

// Sentinel error patterns returned by the dump package.
const (
	DumpError = "dump: %v"
)

// Write the graph of the snapshot to the io.Writer.
func Write(output io.Writer, snapshot clocktree.Snapshot) error {
	// memviz does not report write errors so the graph is built in a buffer
	// and written in one go
	var b bytes.Buffer
	memviz.Map(&b, &snapshot)

	if _, err := output.Write(b.Bytes()); err != nil {
		return curated.Errorf(DumpError, err)
	}
	return nil
}

// ToFile writes the graph of the snapshot to a new file in the working
// directory. Returns the name of the file.
func ToFile(snapshot clocktree.Snapshot) (string, error) {
	fn := paths.UniqueFilename("dump", "clocktree", "dot")

	f, err := os.Create(fn)
	if err != nil {
		return "", curated.Errorf(DumpError, err)
	}
	defer f.Close()

	if err := Write(f, snapshot); err != nil {
		return "", err
	}

	logger.Logf(logger.Allow, "dump", "clock tree written to %s", fn)

	return fn, nil
}
