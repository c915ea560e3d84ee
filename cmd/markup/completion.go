package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// sourcePattern matches markup sources offered as convert arguments.
const sourcePattern = "*.mu,*.markup"

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values, e.g. shell names
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments
}

// completionMeta holds completion hints for flags. Names, types and
// descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"page-size":   {Values: []string{"letter", "a4", "legal"}},
	"orientation": {Values: []string{"portrait", "landscape"}},

	// File flags with glob patterns
	"config":   {FileGlob: "*.yaml,*.yml"},
	"style":    {FileGlob: "*.css"},
	"template": {FileGlob: "*.html"},

	// Directory flags
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet converts a pflag.FlagSet into completion definitions.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Compile markup files to HTML or PDF",
			Flags:       extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			TakesFiles:  true,
			FilePattern: sourcePattern,
		},
		{
			Name:  "config",
			Desc:  "Print the effective configuration",
			Flags: extractFlagsFromFlagSet(newConfigFlagSet(&configFlags{})),
		},
		{
			Name:  "doctor",
			Desc:  "Check assets and the PDF toolchain",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&doctorFlags{})),
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: commandNames(),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)},
		},
	}
}

// commandNames returns the sorted subcommand names.
func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	case ShellPowerShell:
		script = generatePowerShell(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// splitGlob turns "*.yaml,*.yml" into the bare extensions "yaml", "yml".
func splitGlob(glob string) []string {
	var exts []string
	for _, p := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(p), "*."))
	}
	return exts
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# bash completion for markup\n\n")
	b.WriteString("_markup_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 && \"${cur}\" != -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"${cur}\") $(compgen -f -X '!*.@(%s)' -- \"${cur}\") )\n",
		strings.Join(commandNames(), " "), strings.Join(splitGlob(sourcePattern), "|"))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		if c.Name == "convert" {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		writeBashCommand(&b, c)
		b.WriteString("        ;;\n")
	}

	// A leading flag or a file argument implies convert.
	for _, c := range cmds {
		if c.Name == "convert" {
			b.WriteString("    *)\n")
			writeBashCommand(&b, c)
			b.WriteString("        ;;\n")
		}
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -o filenames -F _markup_completions markup\n")
	return b.String()
}

func writeBashCommand(b *strings.Builder, c commandDef) {
	if hasValueFlags(c.Flags) {
		b.WriteString("        case \"${prev}\" in\n")
		for _, f := range c.Flags {
			if f.Type == flagBool {
				continue
			}
			fmt.Fprintf(b, "        %s)\n", bashFlagNames(f))
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(b, "            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(b, "            COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") $(compgen -d -- \"${cur}\") )\n",
					strings.Join(splitGlob(f.FileGlob), "|"))
			case flagDir:
				b.WriteString("            COMPREPLY=( $(compgen -d -- \"${cur}\") )\n")
			default:
				b.WriteString("            COMPREPLY=()\n")
			}
			b.WriteString("            return\n")
			b.WriteString("            ;;\n")
		}
		b.WriteString("        esac\n")
	}

	if len(c.Flags) > 0 {
		b.WriteString("        if [[ \"${cur}\" == -* ]]; then\n")
		fmt.Fprintf(b, "            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(flagWords(c.Flags), " "))
		b.WriteString("            return\n")
		b.WriteString("        fi\n")
	}

	switch {
	case len(c.Args) > 0:
		fmt.Fprintf(b, "        COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(c.Args, " "))
	case c.TakesFiles:
		fmt.Fprintf(b, "        COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") $(compgen -d -- \"${cur}\") )\n",
			strings.Join(splitGlob(c.FilePattern), "|"))
	default:
		b.WriteString("        COMPREPLY=()\n")
	}
}

func hasValueFlags(flags []flagDef) bool {
	for _, f := range flags {
		if f.Type != flagBool {
			return true
		}
	}
	return false
}

func bashFlagNames(f flagDef) string {
	if f.Short != "" {
		return "--" + f.Long + "|-" + f.Short
	}
	return "--" + f.Long
}

// flagWords lists every spelling of the flags, long form first.
func flagWords(flags []flagDef) []string {
	words := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef markup\n\n")
	b.WriteString("_markup() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshQuote(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )) && [[ ${words[CURRENT]} != -* ]]; then\n")
	b.WriteString("        _describe -t commands 'markup command' commands\n")
	fmt.Fprintf(&b, "        _files -g %s\n", zshGlob(sourcePattern))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=${words[2]}\n")
	b.WriteString("    if (( ${commands[(I)${cmd}:*]} )); then\n")
	b.WriteString("        shift words\n")
	b.WriteString("        (( CURRENT-- ))\n")
	b.WriteString("    else\n")
	b.WriteString("        cmd=convert\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case ${cmd} in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		var specs []string
		for _, f := range c.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		switch {
		case len(c.Args) > 0:
			specs = append(specs, fmt.Sprintf("'1:argument:(%s)'", strings.Join(c.Args, " ")))
		case c.TakesFiles:
			specs = append(specs, fmt.Sprintf("'*:file:_files -g %s'", zshGlob(c.FilePattern)))
		}
		if len(specs) == 0 {
			b.WriteString("        ;;\n")
			continue
		}
		b.WriteString("        _arguments -s \\\n")
		for i, spec := range specs {
			if i == len(specs)-1 {
				fmt.Fprintf(&b, "            %s\n", spec)
			} else {
				fmt.Fprintf(&b, "            %s \\\n", spec)
			}
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("if [[ \"${funcstack[1]}\" = \"_markup\" ]]; then\n")
	b.WriteString("    _markup \"$@\"\n")
	b.WriteString("else\n")
	b.WriteString("    compdef _markup markup\n")
	b.WriteString("fi\n")
	return b.String()
}

func zshFlagSpec(f flagDef) string {
	desc := "[" + zshQuote(zshEscapeBrackets(f.Desc)) + "]"

	var value string
	switch f.Type {
	case flagBool:
	case flagEnum:
		value = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		value = fmt.Sprintf(":file:_files -g %s", zshGlob(f.FileGlob))
	case flagDir:
		value = ":directory:_files -/"
	default:
		value = ":" + f.Long + ": "
	}

	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, value)
	}
	return fmt.Sprintf("'--%s%s%s'", f.Long, desc, value)
}

// zshGlob turns "*.mu,*.markup" into the quoted pattern "*.(mu|markup)".
func zshGlob(glob string) string {
	exts := splitGlob(glob)
	if len(exts) == 1 {
		return "\"*." + exts[0] + "\""
	}
	return "\"*.(" + strings.Join(exts, "|") + ")\""
}

func zshQuote(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}

func zshEscapeBrackets(s string) string {
	return strings.NewReplacer("[", `\[`, "]", `\]`).Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for markup\n\n")
	b.WriteString("function __fish_markup_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_markup_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test \"$cmd[2]\" = \"$argv[1]\"\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c markup -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c markup -n __fish_markup_needs_command -a %s -d '%s'\n", c.Name, fishQuote(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_markup_using_command %s'", c.Name)
		for _, f := range c.Flags {
			b.WriteString(fishFlagLine(cond, f))
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c markup -n %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.TakesFiles:
			var suffixes []string
			for _, ext := range splitGlob(c.FilePattern) {
				suffixes = append(suffixes, "__fish_complete_suffix ."+ext)
			}
			fmt.Fprintf(&b, "complete -c markup -n %s -a '(%s)'\n", cond, strings.Join(suffixes, "; "))
		}
	}
	return b.String()
}

func fishFlagLine(cond string, f flagDef) string {
	parts := []string{"complete -c markup -n " + cond}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-l "+f.Long)

	switch f.Type {
	case flagBool:
	case flagEnum:
		parts = append(parts, fmt.Sprintf("-x -a '%s'", strings.Join(f.Values, " ")))
	case flagFile:
		parts = append(parts, "-r -F")
	case flagDir:
		parts = append(parts, "-x -a '(__fish_complete_directories)'")
	default:
		parts = append(parts, "-x")
	}

	parts = append(parts, fmt.Sprintf("-d '%s'", fishQuote(f.Desc)))
	return strings.Join(parts, " ") + "\n"
}

func fishQuote(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func generatePowerShell(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# powershell completion for markup\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName markup -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s' = '%s'\n", c.Name, psQuote(c.Desc))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		words := flagWords(c.Flags)
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = "'" + w + "'"
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(quoted, ", "))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $positional = @{\n")
	for _, c := range cmds {
		if len(c.Args) == 0 {
			continue
		}
		quoted := make([]string, len(c.Args))
		for i, a := range c.Args {
			quoted[i] = "'" + a + "'"
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(quoted, ", "))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $elements = @($commandAst.CommandElements | Select-Object -Skip 1 | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($wordToComplete -ne '' -and $elements.Count -gt 0) {\n")
	b.WriteString("        $elements = @($elements | Select-Object -SkipLast 1)\n")
	b.WriteString("    }\n\n")
	b.WriteString("    if ($elements.Count -eq 0 -and $wordToComplete -notlike '-*') {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $command = 'convert'\n")
	b.WriteString("    if ($elements.Count -gt 0 -and $commands.Contains($elements[0])) {\n")
	b.WriteString("        $command = $elements[0]\n")
	b.WriteString("    }\n\n")
	b.WriteString("    if ($wordToComplete -like '-*') {\n")
	b.WriteString("        $flags[$command] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    if ($positional.ContainsKey($command)) {\n")
	b.WriteString("        $positional[$command] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

func psQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: markup completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(markup completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(markup completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    markup completion fish > ~/.config/fish/completions/markup.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    markup completion powershell | Out-String | Invoke-Expression")
}
