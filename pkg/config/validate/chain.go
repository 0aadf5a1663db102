package validate

// ChainConfig represents the chain and block assembler configuration for validation purposes.
type ChainConfig struct {
	DataDir  string
	Spec     string
	TypeHash string
}

// ValidateChain performs validation of the chain, data directory and block assembler settings.
func ValidateChain(cc ChainConfig) []error {
	var errs []error

	if cc.DataDir == "" {
		errs = append(errs, ValidationError{
			Path:    "data_dir",
			Message: "must not be empty",
			Hint:    `use "default" for the standard location`,
		})
	}

	if cc.Spec == "" {
		errs = append(errs, ValidationError{
			Path:    "chain.spec",
			Message: "must not be empty",
			Hint:    "path to a chain specification file, e.g. spec/dev.json",
		})
	}

	if err := ValidateHexHash(cc.TypeHash, 32); err != nil {
		errs = append(errs, ValidationError{
			Path:    "block_assembler.type_hash",
			Message: err.Error(),
		})
	} else if cc.TypeHash == zeroHash {
		errs = append(errs, ValidationError{
			Path:    "block_assembler.type_hash",
			Message: "must not be the zero hash",
			Hint:    "set the script hash that receives block rewards",
		})
	}

	return errs
}

const zeroHash = "0x0000000000000000000000000000000000000000000000000000000000000000"
