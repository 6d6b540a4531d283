// Command rnsga2 runs a preference based multi-objective optimization on a
// benchmark problem and writes the non-dominated solutions it found.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

func main() {
	fs := pflag.NewFlagSet("rnsga2", pflag.ExitOnError)
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)

	o := newOptions()
	o.addFlags(fs)
	_ = fs.Parse(os.Args[1:])

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := runCommand(ctx, o, fs, os.Stdin, os.Stdout)
	cancel()
	if err != nil {
		klog.ErrorS(err, "Optimization failed")
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}

func runCommand(ctx context.Context, o *options, fs *pflag.FlagSet, stdin io.Reader, stdout io.Writer) error {
	args, err := o.args(fs)
	if err != nil {
		return err
	}
	return run(klog.NewContext(ctx, klog.Background().WithName("rnsga2")), args, o, stdin, stdout)
}
