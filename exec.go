package motograph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/esimov/motograph/utils"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// validExtensions lists the mesh formats accepted as input.
var validExtensions = []string{".obj"}

// Ops describes the source and destination of a decomposition run.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the outcome of processing a single mesh file.
type result struct {
	path string
	err  error
}

// Execute decomposes a single mesh, a pipe or every mesh found under a directory.
// Directories are processed concurrently, one worker per file.
func (p *Processor) Execute(op *Ops) error {
	msg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ MOTOGRAPH", utils.StatusMessage),
		utils.DecorateText("⇢ tracing motorcycles...", utils.DefaultMessage),
	)
	if p.Spinner == nil {
		p.Spinner = utils.NewSpinner(msg, time.Millisecond*80, true)
	}

	// Capture CTRL-C signal and restores back the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalChan)
		close(signalChan)
	}()
	go func() {
		if _, ok := <-signalChan; ok {
			p.Spinner.RestoreCursor()
			os.Exit(1)
		}
	}()

	src := op.Src
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadMesh(src)
		if f != nil {
			defer os.Remove(f.Name())
			f.Close()
		}
		if err != nil {
			return fmt.Errorf("failed to load the source mesh: %w", err)
		}
		src = f.Name()
	}

	var (
		fs  os.FileInfo
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source mesh: %w", err)
	}

	now := time.Now()
	switch mode := fs.Mode(); {
	case mode.IsDir():
		if err := os.MkdirAll(op.Dst, 0755); err != nil {
			return fmt.Errorf("unable to create the destination directory: %w", err)
		}
		// A single preview path cannot serve several meshes.
		p.Preview = ""

		// Limit the concurrently running workers to maxWorkers.
		if op.Workers <= 0 || op.Workers > maxWorkers {
			op.Workers = runtime.NumCPU()
		}
		if err := op.processDir(p, src); err != nil {
			return err
		}
	default:
		if op.Dst != op.PipeName && !isValidExtension(filepath.Ext(op.Dst), validExtensions) {
			return fmt.Errorf("%v file type not supported", filepath.Ext(op.Dst))
		}
		p.Spinner.Start()
		err := op.process(p, src, op.Dst)
		p.Spinner.Stop()
		op.printOpStatus(op.Dst, err)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}

// processDir walks the source tree and decomposes every mesh with a bounded
// number of workers. The first failure cancels the remaining work.
func (op *Ops) processDir(p *Processor, src string) error {
	g, ctx := errgroup.WithContext(context.Background())
	paths, errc := walkDir(ctx, src, validExtensions)
	results := make(chan result)

	for i := 0; i < op.Workers; i++ {
		g.Go(func() error {
			return op.consumer(ctx, p, src, results, paths)
		})
	}
	// Close the channel after the values are consumed.
	var wait sync.WaitGroup
	wait.Add(1)
	var groupErr error
	go func() {
		defer wait.Done()
		defer close(results)
		groupErr = g.Wait()
	}()

	p.Spinner.Start()
	count := 0
	for res := range results {
		if res.err == nil {
			count++
		}
		p.Spinner.SetMessage(fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ MOTOGRAPH", utils.StatusMessage),
			utils.DecorateText(fmt.Sprintf("⇢ %s meshes decomposed", utils.FormatCount(count)), utils.DefaultMessage),
		))
	}
	wait.Wait()
	p.Spinner.Stop()

	if groupErr != nil {
		return groupErr
	}
	if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Fprintf(os.Stderr, "\n%s meshes saved into: %s\n",
		utils.FormatCount(count), utils.DecorateText(op.Dst, utils.SuccessMessage))
	return nil
}

// consumer reads the path names from the paths channel and decomposes each mesh
// into the mirrored location under the destination directory.
func (op *Ops) consumer(
	ctx context.Context,
	p *Processor,
	root string,
	res chan<- result,
	paths <-chan string,
) error {
	for src := range paths {
		rel, err := filepath.Rel(root, src)
		if err != nil {
			return err
		}
		dst := filepath.Join(op.Dst, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		err = op.process(p, src, dst)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case res <- result{path: src, err: err}:
		}
		if err != nil {
			return fmt.Errorf("%s: %w", src, err)
		}
	}
	return nil
}

// process decomposes the mesh at in and writes the result to out.
func (op *Ops) process(p *Processor, in, out string) error {
	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return err
	}
	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	err = p.Process(src, dst)
	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			// remove the generated file in case of an error
			os.Remove(f.Name())
		}
	}
	return err
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %v", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, fmt.Errorf("unable to create the destination file: %v", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the outcome of a single file decomposition.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n",
			utils.DecorateText("\nError decomposing the mesh:", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		var size string
		if fi, err := os.Stat(fname); err == nil {
			size = fmt.Sprintf("(%s)", utils.FormatSize(fi.Size()))
		}
		fmt.Fprintf(os.Stderr, "\nThe mesh has been saved as: %s %s%s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			size,
			utils.DefaultColor,
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each supported file to a new channel.
// It finishes when the context gets cancelled.
func walkDir(
	ctx context.Context,
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() || !isValidExtension(filepath.Ext(f.Name()), srcExts) {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
