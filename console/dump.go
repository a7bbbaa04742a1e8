// This file is part of Citrine.
//
// Citrine is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Citrine is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Citrine.  If not, see <https://www.gnu.org/licenses/>.

package console

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/citrine-emu/citrine/curated"
	"github.com/citrine-emu/citrine/logger"

	"github.com/bradleyjkemp/memviz"
)

// DumpState writes a graphviz rendering of the value's reachable object
// graph to a timestamped .dot file in the working directory. Intended for
// the driver state machine but works on anything memviz can walk.
func DumpState(value interface{}) (string, error) {
	buf := &bytes.Buffer{}
	memviz.Map(buf, value)

	path := fmt.Sprintf("citrine_state_%s.dot", time.Now().Format("20060102_150405"))

	err := os.WriteFile(path, buf.Bytes(), 0644)
	if err != nil {
		return "", curated.Errorf("console: %v", err)
	}

	logger.Logf(logger.Allow, "console", "state graph written to %s", path)

	return path, nil
}
