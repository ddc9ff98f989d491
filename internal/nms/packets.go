package nms

import "io"

const (
	PacketLogin            = 1
	PacketChat             = 3
	PacketEntityEquipment  = 5
	PacketRespawn          = 9
	PacketNamedEntitySpawn = 20
	PacketAttachEntity     = 39
	PacketSetSlot          = 103
	PacketWindowItems      = 104
)

// Packets returns a constructor for every packet this server knows.
func Packets() map[int]func() any {
	return map[int]func() any{
		PacketLogin:            func() any { return new(Packet1Login) },
		PacketChat:             func() any { return new(Packet3Chat) },
		PacketEntityEquipment:  func() any { return new(Packet5EntityEquipment) },
		PacketRespawn:          func() any { return new(Packet9Respawn) },
		PacketNamedEntitySpawn: func() any { return new(Packet20NamedEntitySpawn) },
		PacketAttachEntity:     func() any { return new(Packet39AttachEntity) },
		PacketSetSlot:          func() any { return new(Packet103SetSlot) },
		PacketWindowItems:      func() any { return new(Packet104WindowItems) },
	}
}

type Packet1Login struct {
	EntityID    int32
	Username    string
	WorldType   *WorldType
	GameMode    int32
	Dimension   int32
	Difficulty  int8
	WorldHeight int8
	MaxPlayers  int8
}

func (p *Packet1Login) Write(w io.Writer) error {
	o := &dataOutput{w: w}
	o.write(p.EntityID)
	o.writeString(p.Username)
	o.writeWorldType(p.WorldType)
	o.write(p.GameMode)
	o.write(p.Dimension)
	o.write(p.Difficulty)
	o.write(p.WorldHeight)
	o.write(p.MaxPlayers)
	return o.err
}

func (p *Packet1Login) Read(r io.Reader) error {
	in := &dataInput{r: r}
	p.EntityID = in.readInt32()
	p.Username = in.readString()
	p.WorldType = in.readWorldType()
	p.GameMode = in.readInt32()
	p.Dimension = in.readInt32()
	p.Difficulty = in.readInt8()
	p.WorldHeight = in.readInt8()
	p.MaxPlayers = in.readInt8()
	return in.err
}

type Packet3Chat struct {
	Message string
}

func (p *Packet3Chat) Write(w io.Writer) error {
	o := &dataOutput{w: w}
	o.writeString(p.Message)
	return o.err
}

func (p *Packet3Chat) Read(r io.Reader) error {
	in := &dataInput{r: r}
	p.Message = in.readString()
	return in.err
}

type Packet5EntityEquipment struct {
	EntityID int32
	Slot     int16
	Item     *ItemStack
}

func (p *Packet5EntityEquipment) Write(w io.Writer) error {
	o := &dataOutput{w: w}
	o.write(p.EntityID)
	o.write(p.Slot)
	o.writeItemStack(p.Item)
	return o.err
}

func (p *Packet5EntityEquipment) Read(r io.Reader) error {
	in := &dataInput{r: r}
	p.EntityID = in.readInt32()
	p.Slot = in.readInt16()
	p.Item = in.readItemStack()
	return in.err
}

type Packet9Respawn struct {
	Dimension   int32
	Difficulty  int8
	GameMode    int8
	WorldHeight int16
	WorldType   *WorldType
}

func (p *Packet9Respawn) Write(w io.Writer) error {
	o := &dataOutput{w: w}
	o.write(p.Dimension)
	o.write(p.Difficulty)
	o.write(p.GameMode)
	o.write(p.WorldHeight)
	o.writeWorldType(p.WorldType)
	return o.err
}

func (p *Packet9Respawn) Read(r io.Reader) error {
	in := &dataInput{r: r}
	p.Dimension = in.readInt32()
	p.Difficulty = in.readInt8()
	p.GameMode = in.readInt8()
	p.WorldHeight = in.readInt16()
	p.WorldType = in.readWorldType()
	return in.err
}

type Packet20NamedEntitySpawn struct {
	EntityID    int32
	Name        string
	X           int32
	Y           int32
	Z           int32
	Yaw         int8
	Pitch       int8
	CurrentItem int16
}

func (p *Packet20NamedEntitySpawn) Write(w io.Writer) error {
	o := &dataOutput{w: w}
	o.write(p.EntityID)
	o.writeString(p.Name)
	o.write(p.X)
	o.write(p.Y)
	o.write(p.Z)
	o.write(p.Yaw)
	o.write(p.Pitch)
	o.write(p.CurrentItem)
	return o.err
}

func (p *Packet20NamedEntitySpawn) Read(r io.Reader) error {
	in := &dataInput{r: r}
	p.EntityID = in.readInt32()
	p.Name = in.readString()
	p.X = in.readInt32()
	p.Y = in.readInt32()
	p.Z = in.readInt32()
	p.Yaw = in.readInt8()
	p.Pitch = in.readInt8()
	p.CurrentItem = in.readInt16()
	return in.err
}

type Packet39AttachEntity struct {
	EntityID  int32
	VehicleID int32
}

func (p *Packet39AttachEntity) Write(w io.Writer) error {
	o := &dataOutput{w: w}
	o.write(p.EntityID)
	o.write(p.VehicleID)
	return o.err
}

func (p *Packet39AttachEntity) Read(r io.Reader) error {
	in := &dataInput{r: r}
	p.EntityID = in.readInt32()
	p.VehicleID = in.readInt32()
	return in.err
}

type Packet103SetSlot struct {
	WindowID int8
	Slot     int16
	Item     *ItemStack
}

func (p *Packet103SetSlot) Write(w io.Writer) error {
	o := &dataOutput{w: w}
	o.write(p.WindowID)
	o.write(p.Slot)
	o.writeItemStack(p.Item)
	return o.err
}

func (p *Packet103SetSlot) Read(r io.Reader) error {
	in := &dataInput{r: r}
	p.WindowID = in.readInt8()
	p.Slot = in.readInt16()
	p.Item = in.readItemStack()
	return in.err
}

type Packet104WindowItems struct {
	WindowID int8
	Items    []*ItemStack
}

func (p *Packet104WindowItems) Write(w io.Writer) error {
	o := &dataOutput{w: w}
	o.write(p.WindowID)
	o.write(int16(len(p.Items)))
	for _, item := range p.Items {
		o.writeItemStack(item)
	}
	return o.err
}

func (p *Packet104WindowItems) Read(r io.Reader) error {
	in := &dataInput{r: r}
	p.WindowID = in.readInt8()
	n := in.readInt16()
	if in.err != nil {
		return in.err
	}
	p.Items = make([]*ItemStack, 0, max(n, 0))
	for i := int16(0); i < n && in.err == nil; i++ {
		p.Items = append(p.Items, in.readItemStack())
	}
	return in.err
}
