// pkg/transfer/scp.go

package transfer

import (
	"context"
	"strconv"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/host"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
)

// RequiredClients must be on PATH before anything touches the remote host.
var RequiredClients = []string{"ssh", "scp"}

// Copier moves files to the remote host.
type Copier interface {
	MakeRemoteDir(ctx context.Context, dir string) error
	Copy(ctx context.Context, localPath, remotePath string, recursive bool) error
}

// CheckClients fails on the first missing client.
func CheckClients(lookPath func(string) (string, error)) error {
	for _, name := range RequiredClients {
		if _, err := lookPath(name); err != nil {
			return tfl_err.NewDependencyError(name, "file transfer",
				"install the OpenSSH client (Debian/Ubuntu: sudo apt-get install openssh-client)",
				"on Windows enable the \"OpenSSH Client\" optional feature")
		}
	}
	return nil
}

// SCPCopier uses the OpenSSH ssh and scp clients.
type SCPCopier struct {
	Runner  execute.Runner
	Profile host.Profile
}

func NewSCPCopier(runner execute.Runner, profile host.Profile) *SCPCopier {
	if runner == nil {
		runner = execute.DefaultRunner
	}
	return &SCPCopier{Runner: runner, Profile: profile}
}

func (c *SCPCopier) MakeRemoteDir(ctx context.Context, dir string) error {
	args := []string{"-p", strconv.Itoa(c.Profile.SSHPort)}
	args = append(args, c.identityArgs()...)
	args = append(args, c.Profile.Target(), "mkdir", "-p", dir)
	_, err := c.Runner.Run(ctx, execute.Options{Command: "ssh", Args: args})
	return err
}

func (c *SCPCopier) Copy(ctx context.Context, localPath, remotePath string, recursive bool) error {
	args := []string{"-P", strconv.Itoa(c.Profile.SSHPort)}
	args = append(args, c.identityArgs()...)
	if recursive {
		args = append(args, "-r")
	}
	args = append(args, localPath, c.Profile.Target()+":"+remotePath)
	_, err := c.Runner.Run(ctx, execute.Options{Command: "scp", Args: args})
	return err
}

func (c *SCPCopier) identityArgs() []string {
	if c.Profile.IdentityFile == "" {
		return nil
	}
	return []string{"-i", c.Profile.IdentityFile}
}
