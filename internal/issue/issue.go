// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	HostNotSupportedId
	MissingArgumentId
	PromptCancelledId
	EnvironmentCollisionId
	CommandNotFoundId
	SubprocessFailedId
	SubprocessTimedOutId
	FrontendUpdateFailedId
	BackendInstallFailedId
	PackagingFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if links := slices.Concat(i.DocLinks(), i.ExtLinks()); len(links) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range links {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The build configuration or the project ` + "`.env`" + ` file could not be read.

## Things you can try:
- Check the error message above for the file, line and column
- Print the effective configuration:
~~~
$ nativebuild config show
~~~

- Create a fresh configuration file:
~~~
$ nativebuild config init
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	hostNotSupportedIssue = &Issue{
		id: HostNotSupportedId,
		mdMsg: `
# Host not supported!

The target operating system defaults to the one you are running on, but this
host is not Windows, Linux or macOS.

## Things you can try:
- Pass the target explicitly:
~~~
$ nativebuild build linux -x64 false
~~~`,
	}

	missingArgumentIssue = &Issue{
		id: MissingArgumentId,
		mdMsg: `
# Missing build arguments!

Prompts are disabled (` + "`--no-interaction`" + `), so every selection must be
passed on the command line.

## Things you can try:
- Pass all three arguments:
~~~
$ nativebuild build mac -arm64 true
~~~

- Or build every target at once:
~~~
$ nativebuild build all
~~~

- List the architectures available for each OS:
~~~
$ nativebuild targets
~~~`,
	}

	promptCancelledIssue = &Issue{
		id: PromptCancelledId,
		mdMsg: `
# Build cancelled!

A selection prompt was aborted before an answer was given. Nothing was
packaged.`,
	}

	environmentCollisionIssue = &Issue{
		id: EnvironmentCollisionId,
		mdMsg: `
# Updater environment conflicts with build variables!

The configured updater provider exports a variable that the build environment
already defines.

## Things you can try:
- Review the ` + "`updater`" + ` section of your configuration
- Disable the updater to confirm it is the source:
~~~
$ NATIVEBUILD_UPDATER_ENABLED=false nativebuild build
~~~`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found!

A build tool could not be started. The build needs ` + "`npm`" + ` and
` + "`composer`" + ` on your PATH.

## Things you can try:
- Check the tools are installed:
~~~
$ npm --version
$ composer --version
~~~

- Override the commands in your configuration (` + "`build.frontend_update`" + `,
  ` + "`build.backend_install`" + `, ` + "`build.package_command`" + `)`,
		extLinks: []HttpLink{"https://docs.npmjs.com/downloading-and-installing-node-js-and-npm", "https://getcomposer.org/download/"},
	}

	subprocessFailedIssue = &Issue{
		id: SubprocessFailedId,
		mdMsg: `
# A build step failed!

One of the build subprocesses exited with a non-zero status. Its output is
shown above.

## Things you can try:
- Run again with verbose logging:
~~~
$ nativebuild --verbose build
~~~

- Preview the commands without running them:
~~~
$ nativebuild build --dry-run
~~~`,
	}

	subprocessTimedOutIssue = &Issue{
		id: SubprocessTimedOutId,
		mdMsg: `
# A build step timed out!

The backend dependency install did not finish within ` + "`process.timeout`" + `.

## Things you can try:
- Raise the limit:
~~~
$ NATIVEBUILD_PROCESS_TIMEOUT=5m nativebuild build
~~~

- Warm the composer cache by running the install once by hand`,
	}

	frontendUpdateFailedIssue = &Issue{
		id: FrontendUpdateFailedId,
		mdMsg: `
# Frontend dependency update failed!

` + "`npm update`" + ` failed in the frontend directory.

## Things you can try:
- Check ` + "`build.frontend_dir`" + ` points at the Electron project
- Run ` + "`npm update`" + ` in that directory to see the full error`,
	}

	backendInstallFailedIssue = &Issue{
		id: BackendInstallFailedId,
		mdMsg: `
# Backend dependency install failed!

` + "`composer install --no-dev`" + ` failed in the project root.

## Things you can try:
- Validate your composer files:
~~~
$ composer validate
~~~

- Check your PHP extensions match the lock file`,
	}

	packagingFailedIssue = &Issue{
		id: PackagingFailedId,
		mdMsg: `
# Packaging failed!

The packaging script exited with a non-zero status.

## Things you can try:
- Check the script exists in the frontend ` + "`package.json`" + `
- When publishing, check the updater credentials are exported`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		hostNotSupportedIssue.Id():     hostNotSupportedIssue,
		missingArgumentIssue.Id():      missingArgumentIssue,
		promptCancelledIssue.Id():      promptCancelledIssue,
		environmentCollisionIssue.Id(): environmentCollisionIssue,
		commandNotFoundIssue.Id():      commandNotFoundIssue,
		subprocessFailedIssue.Id():     subprocessFailedIssue,
		subprocessTimedOutIssue.Id():   subprocessTimedOutIssue,
		frontendUpdateFailedIssue.Id(): frontendUpdateFailedIssue,
		backendInstallFailedIssue.Id(): backendInstallFailedIssue,
		packagingFailedIssue.Id():      packagingFailedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
