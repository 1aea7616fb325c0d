// Command heapalloc-bench drives N independent allocator instances under
// an allocate/resize/release churn workload and reports per-instance
// counts. Each instance owns its own Allocator and Source; concurrency is
// only ever across instances, never within one.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sync/errgroup"

	"github.com/orizon-lang/heapalloc/internal/alloc"
	"github.com/orizon-lang/heapalloc/internal/buildinfo"
	"github.com/orizon-lang/heapalloc/internal/diag"
	"github.com/orizon-lang/heapalloc/internal/primitives"
)

func main() {
	var (
		instances  = flag.Int("instances", 4, "number of independent allocator instances to run concurrently")
		iterations = flag.Int("iterations", 10000, "allocate/resize/release churn iterations per instance")
		arenaMB    = flag.Int("arena-mb", 64, "pool arena size per instance, in MiB")
		debugPath  = flag.String("debug-flag-file", "", "path whose existence toggles diagnostic tracing (optional)")
		abiConstr  = flag.String("require-abi", "^1.0.0", "semver constraint the header format must satisfy")
	)
	flag.Parse()

	if err := run(*instances, *iterations, *arenaMB, *debugPath, *abiConstr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(instances, iterations, arenaMB int, debugPath, abiConstr string) error {
	ok, err := buildinfo.CheckCompatible(abiConstr)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("heapalloc-bench: header format %s does not satisfy %s",
			buildinfo.HeaderFormatVersion, abiConstr)
	}

	g, _ := errgroup.WithContext(context.Background())
	results := make([]churnStats, instances)

	for i := 0; i < instances; i++ {
		i := i
		g.Go(func() error {
			flagger := diag.NewFlag()
			if debugPath != "" {
				if err := flagger.Watch(debugPath); err != nil {
					return fmt.Errorf("instance %d: %w", i, err)
				}
				defer flagger.Close()
			}

			src, err := primitives.NewDefaultSource(uintptr(arenaMB) << 20)
			if err != nil {
				return fmt.Errorf("instance %d: %w", i, err)
			}

			results[i] = churn(alloc.New(src, flagger), iterations)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for i, r := range results {
		fmt.Printf("instance %d: %d allocs, %d releases, %d resizes\n", i, r.allocs, r.releases, r.resizes)
	}

	return nil
}

type churnStats struct {
	allocs, releases, resizes int
}

// churn exercises a single, unshared Allocator with a mixed
// allocate/resize/release workload sized to touch every pool size class
// and occasionally the bulk path.
func churn(a *alloc.Allocator, iterations int) churnStats {
	var s churnStats

	live := make([]uintptr, 0, 64)

	for i := 0; i < iterations; i++ {
		switch i % 3 {
		case 0:
			size := uintptr(8 + (i%520)*8)
			if p := a.Allocate(size); p != nil {
				live = append(live, asAddr(p))
				s.allocs++
			}
		case 1:
			if len(live) > 0 {
				addr := live[len(live)-1]
				live = live[:len(live)-1]
				a.Release(asPointer(addr))
				s.releases++
			}
		case 2:
			if len(live) > 0 {
				last := len(live) - 1
				p := asPointer(live[last])
				if np := a.Resize(p, uintptr(16+(i%260)*8)); np != nil {
					live[last] = asAddr(np)
					s.resizes++
				}
			}
		}
	}

	for _, addr := range live {
		a.Release(asPointer(addr))
	}

	return s
}

func asAddr(p unsafe.Pointer) uintptr        { return uintptr(p) }
func asPointer(addr uintptr) unsafe.Pointer { return unsafe.Pointer(addr) }
