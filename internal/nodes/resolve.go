package nodes

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dailymotion/tessera-gen/internal/config"
	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/dailymotion/tessera-gen/internal/logger"
	"golang.org/x/term"
)

// DefaultGroup is the group name values read from standard input are bound to.
const DefaultGroup = "node"

// Group is a node group: a placeholder name and its ordered values.
type Group struct {
	Name   string
	Values []string
}

// Set is the resolved, ordered list of node groups.
type Set []Group

// Len returns the total number of values across all groups.
func (s Set) Len() int {
	n := 0
	for _, g := range s {
		n += len(g.Values)
	}
	return n
}

// Names returns the group names in order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, g := range s {
		names[i] = g.Name
	}
	return names
}

// ResolveOptions controls where node values come from when the config file
// has no nodes section.
type ResolveOptions struct {
	// FromStdin enables reading one line of values from Stdin.
	FromStdin bool
	// Stdin defaults to os.Stdin.
	Stdin io.Reader
	Log   logger.Logger
}

// Resolve builds the node set. Config-file groups win and are range
// expanded; otherwise one stdin line is bound verbatim to DefaultGroup;
// otherwise it's a config error.
func Resolve(sources []config.NodeSource, opts ResolveOptions) (Set, error) {
	log := logger.OrDefault(opts.Log)

	if len(sources) > 0 {
		set := make(Set, 0, len(sources))
		for _, src := range sources {
			var values []string
			for _, tok := range src.Tokens {
				if RangeSize(tok) > MaxRangeSize {
					return nil, errors.New(errors.ErrConfig,
						fmt.Sprintf("Range %q in node group %q expands to more than %d values", tok, src.Name, MaxRangeSize),
						"Check the range bounds, or split the group into smaller ranges")
				}
				values = append(values, Expand(tok)...)
			}
			if len(values) == 0 {
				log.Warn("node group %q expands to no values (%s)", src.Name, strings.Join(src.Tokens, " "))
				values = []string{}
			}
			log.Debug("node group %q: %d values", src.Name, len(values))
			set = append(set, Group{Name: src.Name, Values: values})
		}
		return set, nil
	}

	if opts.FromStdin {
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			log.Info("reading node values from the terminal, enter them on one line")
		}

		values, err := readLine(in)
		if err != nil {
			return nil, err
		}
		log.Debug("read %d node values from stdin", len(values))
		return Set{{Name: DefaultGroup, Values: values}}, nil
	}

	return nil, errors.New(errors.ErrConfig,
		"No nodes in config file or from stdin",
		"Add a 'nodes' section to the config file, or pipe values in with --stdin")
}

// readLine reads the first line of r and splits it on whitespace.
func readLine(r io.Reader) ([]string, error) {
	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.WrapWithCode(err, errors.ErrInput,
			"Failed to read node values from stdin",
			"Pipe a line of space-separated values, e.g. echo web-1 web-2 | tessera-gen push --stdin ...")
	}

	values := strings.Fields(line)
	if len(values) == 0 {
		return nil, errors.New(errors.ErrConfig,
			"No node values on stdin",
			"Pipe a line of space-separated values, e.g. echo web-1 web-2 | tessera-gen push --stdin ...")
	}
	return values, nil
}
