// Package transfer copies the application from the operator's machine to
// the target host ahead of provisioning. Copies are sequential and
// best-effort: one failed entry does not stop the rest.
package transfer

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/output"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type Status string

const (
	StatusCopied  Status = "copied"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

type EntryResult struct {
	Entry  Entry
	Status Status
	Err    error
}

// Report lists the result of every manifest entry, in manifest order.
type Report struct {
	Results []EntryResult
}

func (r *Report) count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

func (r *Report) Copied() int  { return r.count(StatusCopied) }
func (r *Report) Skipped() int { return r.count(StatusSkipped) }
func (r *Report) Failed() int  { return r.count(StatusFailed) }

// Config describes one transfer.
type Config struct {
	SourceDir string
	Profile   host.Profile
	Manifest  []Entry
	Copier    Copier
	Printer   *output.Printer
}

// Run creates the remote directory, then copies every manifest entry. It
// returns an error only if the remote directory could not be created or at
// least one entry failed; in the latter case every entry was still attempted.
func Run(rc *tfl_io.RuntimeContext, cfg Config) (*Report, error) {
	logger := otelzap.Ctx(rc.Ctx)
	p := cfg.Printer
	if p == nil {
		p = output.Stdout()
	}
	manifest := cfg.Manifest
	if manifest == nil {
		manifest = DefaultManifest
	}
	remoteDir := cfg.Profile.InstallPath

	p.Title("Transferring taxi fleet ledger to %s:%s", cfg.Profile.Target(), remoteDir)

	logger.Info("Creating remote directory", zap.String("target", cfg.Profile.Target()), zap.String("dir", remoteDir))
	if err := cfg.Copier.MakeRemoteDir(rc.Ctx, remoteDir); err != nil {
		p.Error("Could not create %s on %s", remoteDir, cfg.Profile.Address)
		return nil, tfl_err.NewNetworkError("cannot create remote directory "+remoteDir+" on "+cfg.Profile.Address, err,
			"check the address, user and that SSH is enabled on the host (sudo raspi-config, Interface Options)")
	}
	p.Success("Remote directory %s ready", remoteDir)

	report := &Report{}
	var errs *multierror.Error
	for _, entry := range manifest {
		res := copyEntry(rc, cfg, entry, remoteDir)
		report.Results = append(report.Results, res)

		switch res.Status {
		case StatusCopied:
			p.Success("%s", entry.Path)
		case StatusSkipped:
			p.Info("%s not present, skipped", entry.Path)
		case StatusFailed:
			p.Error("%s: %v", entry.Path, res.Err)
			errs = multierror.Append(errs, cerr.Wrapf(res.Err, "%s", entry.Path))
		}
	}

	printSummary(p, cfg.Profile, report)

	if err := errs.ErrorOrNil(); err != nil {
		logger.Error("Transfer incomplete", zap.Int("failed", report.Failed()), zap.Error(err))
		return report, tfl_err.NewFilesystemError(
			fmt.Sprintf("%d of %d entries failed to transfer", report.Failed(), len(report.Results)), err,
			"fix the entries listed above and re-run `tfl transfer`; re-copying is harmless")
	}
	logger.Info("Transfer complete", zap.Int("copied", report.Copied()), zap.Int("skipped", report.Skipped()))
	return report, nil
}

func copyEntry(rc *tfl_io.RuntimeContext, cfg Config, entry Entry, remoteDir string) EntryResult {
	logger := otelzap.Ctx(rc.Ctx)
	local := filepath.Join(cfg.SourceDir, filepath.FromSlash(entry.Path))

	info, err := os.Stat(local)
	if err != nil {
		if os.IsNotExist(err) && !entry.Required {
			logger.Info("Optional entry absent", zap.String("path", entry.Path))
			return EntryResult{Entry: entry, Status: StatusSkipped}
		}
		return EntryResult{Entry: entry, Status: StatusFailed, Err: cerr.Wrap(err, "cannot read local path")}
	}
	if info.IsDir() != (entry.Kind == KindDir) {
		return EntryResult{Entry: entry, Status: StatusFailed,
			Err: cerr.Newf("expected a %s", entry.Kind)}
	}

	// Directories are copied into the remote parent so that an existing
	// remote directory is refreshed rather than nested.
	remote := path.Join(remoteDir, entry.Path)
	if entry.Kind == KindDir {
		remote = path.Dir(remote) + "/"
	}

	logger.Info("Copying", zap.String("path", entry.Path), zap.String("kind", entry.Kind.String()), zap.String("remote", remote))
	if err := cfg.Copier.Copy(rc.Ctx, local, remote, entry.Kind == KindDir); err != nil {
		return EntryResult{Entry: entry, Status: StatusFailed, Err: err}
	}
	return EntryResult{Entry: entry, Status: StatusCopied}
}

func printSummary(p *output.Printer, profile host.Profile, r *Report) {
	p.Title("Transfer summary")
	_ = output.KeyValue(p.Writer(), [][2]string{
		{"Copied", fmt.Sprint(r.Copied())},
		{"Skipped", fmt.Sprint(r.Skipped())},
		{"Failed", fmt.Sprint(r.Failed())},
	})

	p.Title("Next steps")
	ssh := "ssh " + profile.Target()
	if profile.SSHPort != 22 {
		ssh = fmt.Sprintf("ssh -p %d %s", profile.SSHPort, profile.Target())
	}
	p.Plain("1. Connect:    %s", ssh)
	p.Plain("2. Provision:  cd %s && sudo tfl provision", profile.InstallPath)
	p.Plain("3. Check:      tfl service status")
}
