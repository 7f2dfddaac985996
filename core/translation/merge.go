package translation

// Merge combines a local tree with a remote tree of the same language.
//
// Objects are merged key by key: local-only keys are kept, remote-only keys
// are added and shared keys recurse. At a leaf, a populated local scalar
// survives a blank remote string; in every other case the remote value is
// taken, including when it replaces a local object. Neither input is modified.
func Merge(local, remote *Node) *Node {
	if remote == nil {
		return local.Clone()
	}
	if local == nil {
		return remote.Clone()
	}

	if local.IsObject() && remote.IsObject() {
		out := NewObject()
		for key, lv := range local.Fields {
			if rv, ok := remote.Fields[key]; ok {
				out.Fields[key] = Merge(lv, rv)
			} else {
				out.Fields[key] = lv.Clone()
			}
		}
		for key, rv := range remote.Fields {
			if _, ok := local.Fields[key]; !ok {
				out.Fields[key] = rv.Clone()
			}
		}
		return out
	}

	if local.IsScalar() && !IsBlank(local.Value) && remote.IsBlank() {
		return local.Clone()
	}
	return remote.Clone()
}
