package encode

// Build constructs the complete ffmpeg argument vector for one file:
//
//	ffmpeg -hide_banner -nostdin -y -loglevel <lvl> -i <input> <flags…> <output>
//
// Flag pairs come from the resolved Options in table order. Pairs with an
// empty value are skipped: the command is exec'd without a shell, and a
// literal empty argument (e.g. a blank -vf) would be rejected by ffmpeg.
func Build(input, output string, opts Options, verbose bool) []string {
	args := make([]string, 0, 12+2*len(opts))

	args = append(args, "ffmpeg", "-hide_banner", "-nostdin", "-y")

	if verbose {
		args = append(args, "-loglevel", "info", "-stats")
	} else {
		args = append(args, "-loglevel", "error")
	}

	args = append(args, "-i", input)

	for _, opt := range opts {
		if opt.Value == "" {
			continue
		}
		args = append(args, opt.Flag, opt.Value)
	}

	args = append(args, output)
	return args
}
