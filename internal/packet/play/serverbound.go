// Code in this file registers every PLAY-state serverbound packet name
// the original enumerates as a typed, inert stub so the dispatch table
// has a complete surface to accept (and a future gameplay layer has a
// concrete type per packet to fill in). None of these decode real fields;
// a gameplay layer replacing a stub reads the raw payload itself via a
// packet.Decoder registered through Dispatcher.Register.
package play

import "github.com/risusan87/mcpyserver/internal/packet"

// SBoundStub is the catch-all type for a PLAY serverbound packet with no
// modeled fields. Handle is a no-op; the gameplay seam (Dispatcher)
// overrides the table entry for any id that needs real behavior.
type SBoundStub struct {
	Name string
	ID   int32
}

func (s SBoundStub) PacketID() int32 { return s.ID }

func (SBoundStub) Handle(*packet.PacketConnectionState) (packet.Clientbound, error) {
	return nil, nil
}

// serverboundNames mirrors server_bound/play.py's class order, which lines
// up with the Notchian wire protocol's own packet id ordering for 1.21.4.
var serverboundNames = []string{
	"SConfirmTeleportation",
	"SQueryBlockEntityTag",
	"SBundleItemSelected",
	"SChangeDifficulty",
	"SAcknowledgeMessage",
	"SChatCommand",
	"SSignedChatCommand",
	"SChatMessage",
	"SPlayerSession",
	"SChunkBatchReceived",
	"SClientStatus",
	"SClientTickEnd",
	"SClientInformation",
	"SCommandSuggestionsRequest",
	"SAcknowledgeConfiguration",
	"SClickContainerButton",
	"SClickContainer",
	"SCloseContainer",
	"SChangeContainerSlotState",
	"SCookieResponse",
	"SPluginMessage",
	"SDebugSampleSubscription",
	"SEditBook",
	"SQueryEntityTag",
	"SInteract",
	"SJigsawGenerate",
	"SKeepAlive",
	"SLockDifficulty",
	"SPlayerPosition",
	"SSetPlayerPositionRotation",
	"SSetPlayerRotation",
	"SSetPlayerMovementFlags",
	"SMoveVehicle",
	"SPaddleBoat",
	"SPickItemFromBlock",
	"SPickItemFromEntity",
	"SPingRequest",
	"SPlaceRecipe",
	"SPlayerAbilities",
	"SPlayerAction",
	"SPlayerCommand",
	"SPlayerInput",
	"SPlayerLoaded",
	"SPongResponse",
	"SChangeRecipeBookSettings",
	"SSetSeenRecipe",
	"SRenameItem",
	"SResourcePackResponse",
	"SSeenAdvancements",
	"SSelectTrade",
	"SSetBeaconEffect",
	"SSetHeldItem",
	"SProgramCommandBlock",
	"SProgramCommandBlockMinecart",
	"SSetCreativeModeSlot",
	"SProgramJigsawBlock",
	"SProgramStructureBlock",
	"SUpdateSign",
	"SSwingArm",
	"STeleportToEntity",
	"SUseItemOn",
	"SUseItem",
}

func init() {
	for i, name := range serverboundNames {
		id := int32(i)
		stub := SBoundStub{Name: name, ID: id}
		packet.Register(packet.StatePlay, id, func(payload []byte) (packet.Serverbound, error) {
			return stub, nil
		})
	}
}
