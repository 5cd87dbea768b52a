package manifest

import "github.com/tidwall/sjson"

// PatchExport rewrites a single `exports.<name>` entry of a manifest's raw
// JSON bytes in place, leaving every other field untouched. This lets a
// caller record one CLR value binding discovered at compile time (a host
// parser resolving an ambient global, say) into an on-disk manifest without
// decoding the whole document through Manifest and re-encoding it, which
// would lose any formatting or fields DecodeJSON doesn't model.
func PatchExport(data []byte, name string, exp Export) ([]byte, error) {
	path := "exports." + name
	out, err := sjson.SetBytes(data, path+".declaringClrType", exp.DeclaringClrType)
	if err != nil {
		return nil, err
	}
	out, err = sjson.SetBytes(out, path+".declaringAssemblyName", exp.DeclaringAssemblyName)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(out, path+".clrName", exp.ClrName)
}
