package bukkit

import "strings"

type WorldType struct {
	name string
}

var (
	WorldTypeNormal      = &WorldType{name: "DEFAULT"}
	WorldTypeFlat        = &WorldType{name: "FLAT"}
	WorldTypeVersion11   = &WorldType{name: "DEFAULT_1_1"}
	WorldTypeLargeBiomes = &WorldType{name: "LARGEBIOMES"}

	worldTypes = []*WorldType{WorldTypeNormal, WorldTypeFlat, WorldTypeVersion11, WorldTypeLargeBiomes}
)

func (t *WorldType) Name() string { return t.name }

func (t *WorldType) String() string { return t.name }

// WorldTypeByName looks up a world type, ignoring case.
// It returns nil if there is none.
func WorldTypeByName(name string) *WorldType {
	for _, t := range worldTypes {
		if strings.EqualFold(t.name, name) {
			return t
		}
	}
	return nil
}
