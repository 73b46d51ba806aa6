package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"evostudio/archive"
	"evostudio/common"
	"evostudio/convert/report"
	"evostudio/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if name := cmd.String("style"); len(name) > 0 {
		style, err := common.ParseReportStyle(name)
		if err != nil {
			log.Warn("Unknown report style requested, keeping configured one",
				zap.String("requested", name), zap.Stringer("style", env.Cfg.Report.Style), zap.Error(err))
		} else {
			env.Cfg.Report.Style = style
		}
	}
	if category := strings.TrimSpace(cmd.String("category")); len(category) > 0 {
		env.Cfg.Report.Category = category
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// Text without BOM and non UTF-8 file names in old archives could be in
	// archaic code page
	if cp := cmd.String("input-cp"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF input", zap.String("charset", n))
		}
	}

	rnd, err := NewRenderer(&env.Cfg.Report, log)
	if err != nil {
		return fmt.Errorf("unable to prepare renderer: %w", err)
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("style", rnd.Style()))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, rnd, log)
}

// process handles the core rendering logic independently of CLI framework. It
// determines the input type (directory, archive, or single file) and processes
// accordingly.
func process(ctx context.Context, src, dst string, rnd *report.Renderer, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, rnd, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, tail, "", dst, rnd, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		kind, enc, err := isSourceFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if kind != sourceUnknown && len(tail) == 0 {
			// we have source file, it cannot have tail
			file, err := os.Open(head)
			if err != nil {
				return fmt.Errorf("unable to process file: %w", err)
			}
			defer file.Close()

			cp := state.EnvFromContext(ctx).CodePage
			if err := processSource(ctx, selectReader(file, enc, cp), filepath.Base(head), kind, dst, rnd, log); err != nil {
				return fmt.Errorf("unable to process file (%s): %w", head, err)
			}
			break
		}
		return fmt.Errorf("input was not recognized as report source (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir finds report sources and archives in directory tree and
// processes them in natural name order. Failures of individual files do not
// stop processing, they are logged and returned together.
func processDir(ctx context.Context, dir, dst string, rnd *report.Renderer, log *zap.Logger) (err error) {
	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	slices.SortFunc(paths, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	cp := state.EnvFromContext(ctx).CodePage
	for _, path := range paths {
		if cerr := ctx.Err(); cerr != nil {
			return multierr.Append(err, cerr)
		}

		isArchive, aerr := isArchiveFile(path)
		if aerr != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(aerr))
			continue
		}
		if isArchive {
			count++
			if aerr := processArchive(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir)), dst, rnd, log); aerr != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(aerr))
				err = multierr.Append(err, fmt.Errorf("%s: %w", path, aerr))
			}
			continue
		}

		kind, enc, serr := isSourceFile(path)
		if serr != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(serr))
			continue
		}
		if kind == sourceUnknown {
			log.Debug("Skipping file, not recognized as report source or archive", zap.String("file", path))
			continue
		}

		count++

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if serr := processFile(ctx, path, src, kind, enc, cp, dst, rnd, log); serr != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(serr))
			err = multierr.Append(err, fmt.Errorf("%s: %w", path, serr))
		}
	}
	return err
}

func processFile(ctx context.Context, path, src string, kind sourceKind, enc srcEncoding, cp encoding.Encoding, dst string, rnd *report.Renderer, log *zap.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return processSource(ctx, selectReader(file, enc, cp), src, kind, dst, rnd, log)
}

// processArchive walks all files inside archive, finds report sources under
// "pathIn" and processes them.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, rnd *report.Renderer, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	var failed error
	cp := state.EnvFromContext(ctx).CodePage

	err = archive.Walk(path, pathIn, func(archive string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		kind, enc, err := isSourceInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", archive), zap.String("path", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		if kind == sourceUnknown {
			log.Debug("Skipping file, not recognized as report source", zap.String("archive", archive), zap.String("file", f.FileHeader.Name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
			failed = multierr.Append(failed, fmt.Errorf("%s: %w", f.FileHeader.Name, err))
			return nil
		}
		defer r.Close()

		pathInArchive := f.FileHeader.Name
		if cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}
		if err := processSource(ctx, selectReader(r, enc, cp), filepath.Join(pathOut, pathInArchive), kind, dst, rnd, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
			failed = multierr.Append(failed, fmt.Errorf("%s: %w", f.FileHeader.Name, err))
		}
		return nil
	})
	return multierr.Append(err, failed)
}

// processSource renders single report source. "src" is part of the source
// path (always including file name) relative to the original path. When
// actual file was specified it will be just base file name without a path.
// When looking inside archive or directory it will be relative path inside
// archive or directory (including base file name). "dst" is the destination
// directory where the document should be written.
func processSource(ctx context.Context, r io.Reader, src string, kind sourceKind, dst string, rnd *report.Renderer, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Rendering starting", zap.String("from", src), zap.Stringer("kind", kind))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Rendering ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("rendering panic: %v", r)
		} else if rerr == nil {
			log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	doc, err := decodeDocument(r, src, kind, env.Cfg.Report.Category, time.Now(), log)
	if err != nil {
		return fmt.Errorf("unable to decode source (%s): %w", src, err)
	}

	// Store parsed blocks for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData("blocks/"+filepath.ToSlash(src)+".txt", []byte(doc.blocks().String()))
	}

	// Determine output file name and path based on input and configuration.
	outputName = buildOutputPath(doc, dst, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			log.Warn("Output file already exists, skipping", zap.String("file", outputName))
			outputName = ""
			return nil
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	html, err := doc.render(rnd)
	if err != nil {
		return fmt.Errorf("unable to render document: %w", err)
	}
	if err := os.WriteFile(outputName, []byte(html), 0644); err != nil {
		return fmt.Errorf("unable to write document: %w", err)
	}

	// Store rendering result for debugging
	if env.Rpt != nil {
		name := filepath.Base(outputName)
		if rel, err := filepath.Rel(dst, outputName); err == nil {
			name = filepath.ToSlash(rel)
		}
		env.Rpt.Store("result/"+name, outputName)
	}
	return nil
}
