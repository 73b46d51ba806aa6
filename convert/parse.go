package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"evostudio/content"
	"evostudio/state"
)

// ParseResult is wire form of the parsed tagged text.
type ParseResult struct {
	Blocks content.Blocks `json:"blocks"`
}

// Parse prints block sequence produced from tagged text.
func Parse(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("parse")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}

	var in io.Reader
	if src == "-" {
		in = cmd.Root().Reader
	} else {
		f, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("unable to open source: %w", err)
		}
		defer f.Close()

		header, err := readHeader(f)
		if err != nil {
			return fmt.Errorf("unable to read source: %w", err)
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return err
		}
		in = selectReader(f, detectUTF(header), env.CodePage)
	}

	blocks, err := parseSource(in, cmd.Root().Writer, cmd.Bool("tree"))
	if err != nil {
		return err
	}
	log.Debug("Source parsed", zap.String("source", src), zap.Int("blocks", len(blocks)))

	// Store parsed blocks for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData("blocks/parse.txt", []byte(blocks.String()))
	}
	return nil
}

func parseSource(r io.Reader, w io.Writer, tree bool) (content.Blocks, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read source: %w", err)
	}

	blocks := content.Parse(string(data))
	if blocks == nil {
		blocks = content.Blocks{}
	}

	if tree {
		_, err = io.WriteString(w, blocks.String())
		return blocks, err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ParseResult{Blocks: blocks}); err != nil {
		return nil, fmt.Errorf("unable to encode blocks: %w", err)
	}
	return blocks, nil
}
